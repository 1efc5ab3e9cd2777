// =============================================================================
// Trade Documents - Main Entry Point
// =============================================================================
//
// USAGE:
//   tradedocs generate     - Fill the document templates for an order
//   tradedocs calc         - Preview line-item or total-based calculations
//   tradedocs consolidate  - Merge a marketplace export into label sheets
//   tradedocs labels       - List the item texts of a label sheet
//   tradedocs words        - Spell an amount in Korean numerals
//   tradedocs schema       - Print the config/order JSON schema
//   tradedocs version      - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Core business logic (not for external import)
//   - pkg/           : Shared utilities
//   - configs/       : Example configuration and order files
//
// =============================================================================

package main

import (
	"github.com/hobbybrown/tradedocs/cmd"
)

func main() {
	cmd.Execute()
}
