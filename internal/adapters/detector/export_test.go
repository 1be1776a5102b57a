package detector

var IsCI = isCI
