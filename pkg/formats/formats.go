// Package formats provides parsers for the mesh formats the viewer loads.
//
// OBJ support covers the subset used by the bundled assets: "v" records and
// triangular "f" records whose indices may carry a "//normal" suffix.
package formats
