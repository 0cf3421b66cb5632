package htmldoc

import _ "embed"

// Stylesheet is the default CSS written next to every report.
//
//go:embed xreport.css
var Stylesheet []byte
