package codec

// CommandContext exposes the cwebp command factory for external tests.
var CommandContext = &commandContext
