// Package connection provides the default fsproc.Connection: a view of one
// root directory (or zip archive) through which procedure arguments are
// resolved into file handles.
//
// Locations are translated before resolution. A first path segment naming a
// FileMapping key is replaced by its target, relative locations are anchored
// at the parent directory, and unless AllowParentPaths is set a location that
// leaves the parent directory is rejected with fsproc.ErrInvalidPath.
//
//	factory := connection.NewFactory(connection.Config{ParentDirectory: "/srv/files"})
//	conn, err := factory.GetConnection(ctx)
//	if err != nil {
//	    return err
//	}
//	defer conn.Close()
//	handles, err := conn.Resolve(ctx, "reports/*.csv")
package connection
