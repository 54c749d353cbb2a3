// Package all registers every backend shipped with jsonadapt.
package all

import (
	_ "github.com/reoring/jsonadapt/backend/gojson"
	_ "github.com/reoring/jsonadapt/backend/goyaml"
	_ "github.com/reoring/jsonadapt/backend/json5"
	_ "github.com/reoring/jsonadapt/backend/jsoniter"
	_ "github.com/reoring/jsonadapt/backend/jxraw"
	_ "github.com/reoring/jsonadapt/backend/stdjson"
	_ "github.com/reoring/jsonadapt/backend/yamlv3"
)
