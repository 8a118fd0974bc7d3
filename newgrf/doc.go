// Package newgrf decodes the pseudo-sprite streams of NewGRF files.
//
// A Loader owns one decode session: it scans files for their identity,
// safety-checks static ones, and then walks every configured file through
// the loading stages, dispatching each pseudo-sprite record to the action
// handler registered for (action, stage). The handlers fill the entity
// registries of package entities, the string table of package grftext and
// the graphics chains of package spritegroup; this package itself keeps no
// game state beyond the per-file decode bookkeeping.
package newgrf
