// Package sheet renders a snapshot and its summary into a tabular sink.
//
// The layout is fixed so existing consumers of the document keep working:
//
//	A1:G{n+1}         one row per quote (name, symbol, price, market cap,
//	                  volume, 24h %, capture time), padded with blank rows
//	A{n+2}:C{n+11}    summary block: label, top 5 table, blank row,
//	                  average price, highest and lowest 24h change
//
// where n is the configured page size. Each region is written as a single
// replace, so a region is either fully updated or left as it was.
//
// Sinks:
//   - gsheets: Google Sheets values API
//   - pgsheet: a cell table in PostgreSQL
//   - MemorySink: in-process grid for dry runs and tests
package sheet
