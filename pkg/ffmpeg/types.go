package ffmpeg

// OutputCodec is the lossless codec every clip is written with
const OutputCodec = "flac"

// TrimRequest describes one clip to cut out of a source file.
// The range is half-open: the sample at End is not included.
type TrimRequest struct {
	Input  string  // Source audio file
	Output string  // Destination file, written as FLAC regardless of extension
	Start  float64 // Seconds from the beginning of Input
	End    float64 // Seconds from the beginning of Input, exclusive
}

// Validate checks the trim range
func (r TrimRequest) Validate() error {
	if r.Start < 0 {
		return ErrInvalidRange
	}
	if r.End <= r.Start {
		return ErrInvalidRange
	}
	return nil
}
