// Package pagination turns a result limit and starting offset into a
// sequence of page requests and collects their items.
//
// NextPage maps an offset onto the page that contains it. Accumulate drives
// a fetch function page by page, trimming the part of each page that
// precedes the offset, and stops when the limit is reached, the source
// returns a short page, a fetch fails, or the context is done.
package pagination
