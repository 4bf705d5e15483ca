package domain

// PhotoUpload is an in-memory photo received from a multipart request,
// waiting to be pushed to object storage. Uploads happen before the owning
// trip row is written, so a failed upload never leaves a partial trip behind.
type PhotoUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}
