package internal

// Version is the current release of abbrevsearch
const Version = "0.3.0"
