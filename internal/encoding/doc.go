// Package encoding fits tf-idf feature spaces over normalized articles,
// encodes documents into L2-normalized vectors, and scores document pairs
// with cosine similarity.
//
// The vocabulary assigns feature indexes in lexicographic word order and
// freezes its document frequencies and corpus size at fit time, so
// incremental encodes produce vectors comparable with the ones already
// stored.
package encoding
