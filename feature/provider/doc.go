// Package provider holds what the photo providers share: the day folder
// naming, the hidden-entry rule, content hashing and a Snapshot builder.
//
// Both supported sources lay photos out the same way:
//
//	<root>/<YYYY-MM-DD>/<user>/<photo>
//
// The filesystem implementation lives in provider/fs and the object storage
// implementation in provider/bucket.
package provider
