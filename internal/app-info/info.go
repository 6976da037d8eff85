package app_info

// NAME the name of this application
const NAME = "lanprobe"

// VERSION the current version of this application
const VERSION = "v0.2.0"
