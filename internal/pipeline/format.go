package pipeline

import "github.com/soochol/weave/internal/weave"

// Classify converts raw and optionally visualized results into a response
// classified for presentation:
//
//   - analytics produced an artifact     -> image
//   - analytics failed on tabular data   -> table_with_viz_error
//   - tabular results, no analytics      -> table
//   - everything else                    -> text
func Classify(results, viz any, vizErr string, formatted any) (weave.ResponseType, any) {
	rows, tabular := tabularRows(results)

	if viz != nil {
		if image, ok := stringField(viz, "image"); ok && image != "" {
			return weave.ResponseImage, map[string]any{
				"image": image,
				"rows":  rows,
			}
		}
	}

	if tabular {
		payload := map[string]any{"rows": rows}
		if vizErr != "" {
			payload["viz_error"] = vizErr
			return weave.ResponseTableVizError, payload
		}
		return weave.ResponseTable, payload
	}

	if text, ok := stringField(formatted, "response"); ok && text != "" {
		return weave.ResponseText, text
	}
	if results != nil {
		return weave.ResponseText, results
	}
	return weave.ResponseText, formatted
}

// tabularRows extracts a row set from an executor result. Executors
// return either a bare array of rows or an object with a "rows" field.
func tabularRows(results any) (any, bool) {
	switch v := results.(type) {
	case []any:
		return v, true
	case []map[string]any:
		return v, true
	case map[string]any:
		if rows, ok := v["rows"]; ok {
			return rows, true
		}
	}
	return nil, false
}
