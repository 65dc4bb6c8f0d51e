package service

import "errors"

// ErrNoDocuments indicates there is nothing to index and the embedder cannot
// report a dimension for an empty index.
var ErrNoDocuments = errors.New("no campground documents to index")
