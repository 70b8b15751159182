// Frameskema validates columnar data batches against declarative schemas.
//
// Usage:
//
//	# Validate a CSV file against a schema document
//	frameskema validate --schema employees.yaml employees.csv
//
//	# Validate every dataset declared in frameskema.yaml
//	frameskema validate --all
//
//	# Pull the batch straight from a database
//	frameskema validate --schema catalog.yaml --dsn "file:catalog.db" --driver sqlite --query "SELECT * FROM products"
//
//	# Generate a schema-conforming sample batch
//	frameskema gen --schema employees.yaml --rows 10000 --out sample.csv
//
//	# Keep a dataset under continuous validation
//	frameskema watch --schema employees.yaml --data employees.csv --metrics :9090
package main

import (
	_ "github.com/denisenkom/go-mssqldb"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/sijms/go-ora/v2"
	_ "modernc.org/sqlite"
)

func main() {
	Execute()
}
