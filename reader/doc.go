// Package reader loads data files into tables.
//
// Files are read through an afero.Fs, so callers can point the reader at
// the OS filesystem, a base-path restricted view or an in-memory one. The
// format comes from the file extension:
//
//	.csv       plain CSV, first record is the header
//	.csv.gz    gzip compressed CSV
//	.csv.zst   zstd compressed CSV
//	.parquet   Apache Parquet, top-level fields become columns
//
// All values are kept as text. Parquet values are rendered the way they
// would appear in a CSV cell and nulls become the empty string.
//
// # Multi-file Operations
//
// Reading multiple files using glob patterns:
//
//	t, err := reader.ReadMultipleFiles(afero.NewOsFs(), "data/ipl-*.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Each row includes a "_file" column with the source file path
//	for _, row := range t.Rows {
//	    fmt.Printf("From %s: %v\n", row["_file"], row)
//	}
//
// # Schema Introspection
//
//	infos, err := reader.Schema(fs, "data/ipl.parquet")
//	for _, c := range infos {
//	    fmt.Printf("%s\t%s\t%s\n", c.Name, c.Type, c.PhysicalType)
//	}
package reader
