// Command newswire manages a corpus of news articles: ingesting raw text,
// normalizing it into bag-of-words documents, encoding those as tf-idf
// vectors, and maintaining the cosine-similarity pairs between them.
package main
