// Package tuning loads engine tuning tables from CUE.
//
// A tuning file is a CUE struct whose fields override the stock values
// carried as defaults by the embedded #Tuning schema:
//
//	radius:       90
//	quota_cap:    12
//	boss_levels:  [4, 8, 12]
//	normal_speed: per_level: 0.004
//
// Unknown fields, type mismatches and constraint violations are reported
// as *CompileError values carrying the CUE source position.
package tuning
