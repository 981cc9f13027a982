// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media

import (
	"context"
	"io"
)

// Store is the media store contract: write a blob under a generated path and
// receive back a durable public URL.
type Store interface {

	/*
		Put stores body under path.

		Parameters:
		  - context: context.Context
		  - path: string (slash separated, relative, e.g. "posters/hamlet-<id>.jpg")
		  - contentType: string
		  - body: io.Reader

		Returns:
		  - string: Public URL of the stored object
		  - error: Storage failures
	*/
	Put(context context.Context, path, contentType string, body io.Reader) (string, error)
}
