// Package codec owns the target format registry and the conversion capability
// that decodes a source image and re-encodes it in another format.
//
// The orchestrator in internal/batch depends only on the Converter interface,
// so tests can substitute deterministic fakes. The Library implementation
// covers png, jpeg, gif, tiff, and bmp in process, composes single-page PDFs,
// and delegates webp encoding to the external cwebp binary. All outputs are
// written atomically: a failed conversion never leaves a partial file at the
// destination path.
package codec
