package api

// EngineVersion is reported in the X-Engine-Version header and /version.
const EngineVersion = "1.2.0"
