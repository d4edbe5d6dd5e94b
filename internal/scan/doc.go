// Package scan walks a directory tree and summarizes where disk space is
// concentrated.
//
// The walk is iterative and, by default, single-threaded. Files are grouped
// into categories by extension and only the largest N per category are kept.
// Directories such as node_modules or .git are sized as a whole and reported
// as one entry instead of being descended into.
package scan
