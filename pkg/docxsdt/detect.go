package docxsdt

import "bytes"

var sdtOpenTag = []byte("<w:sdt>")

// ContainsSDT is the SDT Detector (§4.B): a cheap substring probe that lets
// the orchestrator skip the full scan/index pass for parts that plainly
// carry no content controls (media, styles, theme parts, and the many
// document parts that never got one).
func ContainsSDT(part []byte) bool {
	return bytes.Contains(part, sdtOpenTag)
}
