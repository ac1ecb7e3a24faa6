// Package modules contains the self-contained application features.
//
// Each subdirectory is a module implementing module.Module. Modules are
// listed in internal/app and booted by the server at startup.
package modules
