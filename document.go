package aieps

import "image"

// Document is the result of a conversion. The eps package writes it into the fixed document structure of an Illustrator EPS file.
type Document struct {
	Width, Height float64 // page size in points

	Setup   string       // gradient resource definitions
	Page    string       // page operators
	Preview *image.Alpha // coverage of the filled paths, nil if disabled
}
