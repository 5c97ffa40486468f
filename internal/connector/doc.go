// Package connector exposes files as two virtual procedures.
//
// fetchTextFiles(path) and fetchFiles(path) resolve path through an
// fsproc.Connection and return one row per matching file: the content as a
// large object followed by the file name. Text rows carry character large
// objects decoded with the connector's encoding setting; binary rows carry raw
// byte streams.
//
// Rows are produced on demand. Execute resolves the path once, Next wraps one
// handle per call, and no file content is read until a consumer opens a row's
// large object:
//
//	factory := connector.NewExecutionFactory(logger)
//	exec, err := factory.CreateProcedureExecution(fsproc.NewCall("fetchTextFiles", "*.txt"), conn)
//	if err != nil {
//	    return err
//	}
//	defer exec.Close()
//	if err := exec.Execute(ctx); err != nil {
//	    return err
//	}
//	for {
//	    row, err := exec.Next()
//	    if err != nil || row == nil {
//	        return err
//	    }
//	    // row.Content.Open() when the bytes are needed
//	}
package connector
