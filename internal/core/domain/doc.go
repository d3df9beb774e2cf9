// Package domain holds the types shared by every layer of reposearch:
// repositories, search pages, reactor actions and state, settings, and the
// sentinel errors adapters translate their failures into.
//
// Nothing here imports another internal package or a third-party module.
package domain
