// Package schedule downloads the NHL season schedule from the public
// api-web.nhle.com weekly endpoint and converts it to and from the flat CSV
// layout used by the rest of the tool.
//
// The weekly endpoint returns one week of games together with the date at
// which the following week starts. Fetcher walks that chain from a start date
// until the reported next date is missing, falls past the end date, or stops
// moving forward. Rows keep the order in which games were discovered.
package schedule
