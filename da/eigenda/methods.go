package eigenda

// Disperser RPC methods.
const (
	MethodDisperseBlob  = "disperser.Disperser/DisperseBlob"
	MethodGetBlobStatus = "disperser.Disperser/GetBlobStatus"
	MethodRetrieveBlob  = "disperser.Disperser/RetrieveBlob"
)
