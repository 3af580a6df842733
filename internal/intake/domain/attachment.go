package domain

// Attachment describes a file staged on the contact form. Only its name reaches
// the intake handler.
type Attachment struct {
	Name        string
	Size        int64
	ContentType string
}

// SameFile reports whether two attachments share name and size, which is how
// repeated selections of one file are recognized.
func (a Attachment) SameFile(other Attachment) bool {
	return a.Name == other.Name && a.Size == other.Size
}

// AttachmentNames returns the names of the given attachments in order.
func AttachmentNames(files []Attachment) []string {
	if len(files) == 0 {
		return nil
	}
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Name
	}
	return names
}
