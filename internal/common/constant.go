package common

// BundledScheme prefixes document locations that resolve to a document
// compiled into the binary, e.g. "bundled:data.json".
const BundledScheme = "bundled:"

// DefaultDataSyncLocation is used when no location is configured.
const DefaultDataSyncLocation = BundledScheme + "data.json"
