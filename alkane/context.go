package alkane

// Context carries the per-invocation environment a handler observes: the
// contract being called, the caller's identity, the assets sent along with
// the call, and the transaction bytes the host supplies. The verifier's
// VerifyAndUpdate opcode decodes TransactionBytes directly as the SATC
// witness payload; no transaction parsing happens in this module.
type Context struct {
	Myself           Id
	Caller           Id
	IncomingAlkanes  Parcel
	TransactionBytes []byte
}
