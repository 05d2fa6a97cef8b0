package alkane

// CallResponse is the output surface of any opcode: return bytes plus the
// outgoing asset moves the host should execute on the caller's behalf.
type CallResponse struct {
	Data    []byte
	Alkanes Parcel
}

// EmptyResponse is the canonical no-op response returned by handlers that
// move no assets and return no data (most admin opcodes).
func EmptyResponse() CallResponse {
	return CallResponse{Data: nil, Alkanes: nil}
}

// WithData returns a copy of the response carrying the provided data bytes.
func (r CallResponse) WithData(data []byte) CallResponse {
	r.Data = data
	return r
}

// WithAlkanes returns a copy of the response carrying the provided outgoing
// parcel.
func (r CallResponse) WithAlkanes(parcel Parcel) CallResponse {
	r.Alkanes = parcel
	return r
}
