package models

// UploadedImage is the outcome of storing one image in the object bucket.
type UploadedImage struct {
	URL         string `json:"url"`
	Path        string `json:"path"`
	Filename    string `json:"filename"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
	Compressed  bool   `json:"compressed"`
}

// ShareLink is the text summary of a document plus a WhatsApp link carrying it.
type ShareLink struct {
	Text        string `json:"text"`
	WhatsappURL string `json:"whatsappUrl"`
}
