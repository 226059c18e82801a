// Command souq is the storefront server CLI.
//
// Common invocations:
//
//	souq serve            start the HTTP API
//	souq migrate          run pending migrations
//	souq seed             seed catalog and admin data
//	souq route:list       print the route table
//	souq queue:work -w 5  run background job workers
//	souq schedule:run     run the task scheduler standalone
package main
