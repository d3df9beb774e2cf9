// Package file persists settings as a TOML file.
//
// ConfigStore keeps dotted keys in memory, writes the whole file on every
// Set with a temp-file-and-rename, and can watch the file so edits made
// while reposearch runs are picked up.
package file
