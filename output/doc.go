// Package output prints styled operator-facing messages for plume.
//
//	output.Success("Generated 3 files")
//	output.Info("Next steps:")
//	output.Step("go test ./...")
//	output.Error("manifest not found")
//
// Everything goes to the writer set with SetWriter (stdout by default).
// SetColor(false) drops all styling, including the markdown rendering
// of generator descriptions.
//
//   - Success: 🪶 green bold
//   - Error: ❌ red bold
//   - Info: ℹ️ cyan
//   - Step: indented gray
//   - Verbose: 🔍 gray (when enabled)
package output
