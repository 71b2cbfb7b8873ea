package propkit

// Version is the propkit release version.
const Version = "0.1.0"
