// Package lookup resolves exported image filenames to content hashes through
// the remote file lookup service.
//
// A request has the form
//
//	GET <base>?findFileUrlSafe&path=<pathKey>&filename=<key>
//
// where key is the unpadded URL-safe base64 of the UTF-8 filename, byte for byte.
// The service answers {"file_hash": "..."}; the image is then served from
// <base>?getFile=<hash>.
//
// [Client] performs single lookups with a per-request timeout and an optional
// rate limit. [Cache] memoizes results for the lifetime of a run and collapses
// concurrent lookups of the same name. [ResolveAll] fans a batch of names out
// over a bounded number of workers.
package lookup
