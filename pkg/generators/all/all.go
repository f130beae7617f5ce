// Package all registers every bundled generator.
package all

import (
	_ "github.com/nativedb/nativedb/pkg/generators/cpp"        // register C++
	_ "github.com/nativedb/nativedb/pkg/generators/csharp"     // register C#
	_ "github.com/nativedb/nativedb/pkg/generators/lua"        // register Lua
	_ "github.com/nativedb/nativedb/pkg/generators/python"     // register Python
	_ "github.com/nativedb/nativedb/pkg/generators/rust"       // register Rust
	_ "github.com/nativedb/nativedb/pkg/generators/typescript" // register TypeScript
)
