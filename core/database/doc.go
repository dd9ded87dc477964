// Package database connects to the MySQL database the finished catalogue is
// exported to and inspects its schema.
//
// Connect builds the DSN from Config, opens gorm with a silent logger and pings
// within the configured timeout. GetTableColumns and MissingColumns back the
// database integrity check, which compares the export table against the
// columns the export feature writes.
//
//	db, err := database.Connect(cfg.Database)
//	missing, err := database.MissingColumns(db, "travel_skills", export.Columns())
package database
