// Package batch runs Caesar cipher cases read from text files.
//
// A case file holds one case per line in the form KEY#MESSAGE, optionally followed by
// " => EXPECTED". Blank lines and lines starting with "//" are skipped.
package batch
