// Package export writes the finished catalogue to the travel_skills table.
//
// Every export is a full replacement inside one transaction, so readers see
// either the previous run or the new one.
package export
