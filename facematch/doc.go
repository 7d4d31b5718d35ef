/*
Package facematch matches face embeddings against a gallery of stored
voter faces.

# Gallery

The Matcher holds every stored embedding in memory and is safe for
concurrent use. New loads the gallery from the database at startup;
Store writes through to the database on a best-effort basis, so a
storage failure never blocks a vote:

	matcher := facematch.New(db)
	matcher.Store(embedding, voterID)

Storing a second embedding for the same voter replaces the first.

# Recognition

Recognize scans the whole gallery and returns the closest voter when
the distance falls strictly below the threshold:

	voterID, ok := matcher.Recognize(embedding, threshold)

Distance is Euclidean. Embeddings of different lengths (or zero length)
are infinitely far apart, so a malformed capture can never produce a
match.
*/
package facematch
