package novascript

// Version is the release tag stamped into the CLI.
const Version = "0.3.1"
