// Package validation provides input validation for the dungeon crawler's
// CLI command surface (spec §6 "CLI surface").
//
// # Creating a validator
//
// Create an InputValidator with a maximum command-line length:
//
//	validator := validation.NewInputValidator(256)
//
// # Validating commands
//
// Validate a raw command line before tokenizing it further and calling
// into pkg/engine:
//
//	if err := validator.ValidateCommand(line); err != nil {
//	    fmt.Println("invalid command:", err)
//	    continue
//	}
//
// # Supported commands
//
//	move n|s|e|w|ne|nw|se|sw
//	get
//	use <letter>
//	zap <letter> <direction>
//	cast <spell_id> [direction]
//	equip <letter>
//	drop <letter> [count]
//	open <x> <y>
//	close <x> <y>
//	search
//	disarm <x> <y>
//	talk <x> <y>
//	stairs up|down
//	rest [turns]
//	explore
//	save
//	load
//	debug yendor|floor N|pos X Y|hp V|gold N
package validation
