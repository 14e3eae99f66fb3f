package constant

// DefaultTokenType is the scheme reported in token responses and expected
// in the Authorization header.
const DefaultTokenType = "Bearer"
