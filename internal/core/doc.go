// Package core provides CSV ingestion and validation for dashboard datasets.
//
// This package holds all domain logic independent of any transport. It is
// used by the HTTP server, the csvcheck command, and tests without
// modification.
//
// # Architecture
//
// The package is organized around a few key concepts:
//
//   - Datasets: Registered via the registry, each dataset names its required
//     columns and the field rules applied to every parsed row.
//   - Reader: [ReadFileAsText] turns an uploaded file into UTF-8 text,
//     decoding legacy encodings and flattening spreadsheets to CSV.
//   - Parser: [ParseCSV] checks structure and coerces numeric cells.
//   - Service: The main entry point, running read, parse, and validate as one
//     bounded ingest.
//
// # Dataset Registry
//
// Datasets are registered at init time using [Register]:
//
//	core.Register(core.Dataset{
//	    Key:             "density",
//	    Label:           "Population density",
//	    RequiredColumns: schema.DensityColumns,
//	    Rules:           schema.DensityRules,
//	})
//
// # Ingest Flow
//
//  1. Client calls [Service.Ingest] with a dataset key and a [File]
//  2. The [IngestLimiter] bounds how many ingests run at once
//  3. The file is decoded to text, stripping any BOM
//  4. Text is parsed against the dataset's required columns
//  5. Unless parsing failed structurally, rows are checked against the rules
//
// Row problems never fail an ingest: they are reported in [IngestResult] so
// the user can fix the file. Only unreadable input, an unknown dataset, or a
// busy service return an error.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// See error_messages.go for the code reference.
package core
