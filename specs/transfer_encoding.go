package specs

// Transfer coding tokens the body framing decoder recognizes. A
// Transfer-Encoding value that does not contain the identity token
// selects chunked framing.
const (
	TransferEncodingChunked  = "chunked"
	TransferEncodingIdentity = "identity"
)
