package version

import (
	"strings"

	"github.com/launchkit/mccore/pkg/platform"
)

// defaultLegacyJVMTemplate is the fixed vanilla JVM argument list used for
// manifests that only carry a legacy minecraftArguments string.
func defaultLegacyJVMTemplate(plat platform.Platform) []string {
	args := []string{}
	if plat.Name == platform.Windows {
		args = append(args,
			"-XX:HeapDumpPath=MojangTricksIntelDriversForPerformanceSwitch",
			"-Dos.name=Windows 10",
			"-Dos.version=10.0",
		)
	}
	args = append(args,
		"-Djava.library.path=${natives_directory}",
		"-Dminecraft.launcher.brand=${launcher_name}",
		"-Dminecraft.launcher.version=${launcher_version}",
		"-cp",
		"${classpath}",
	)
	return args
}

// mixinArgumentString handles the case where a legacy manifest inherits
// from another legacy manifest: their
// minecraftArguments strings are combined flag by flag. The first value
// seen for a given flag wins (so the parent's value takes precedence over
// the child's, since the parent is folded in first) except --tweakClass,
// whose values are unioned in encounter order — Forge/LiteLoader-era
// modding chains stack tweak classes rather than overriding them.
//
// This is unusual and was kept rather than "fixed": it documents real
// behavior a complete resolver needs to reproduce for legacy modded
// version chains, not an improvement over it.
func mixinArgumentString(parent, child string) string {
	type flagValue struct {
		flag  string
		value string
	}

	tokenize := func(s string) []flagValue {
		fields := strings.Fields(s)
		out := make([]flagValue, 0, len(fields)/2)
		for i := 0; i < len(fields); i++ {
			if strings.HasPrefix(fields[i], "--") {
				flag := fields[i]
				value := ""
				if i+1 < len(fields) && !strings.HasPrefix(fields[i+1], "--") {
					value = fields[i+1]
					i++
				}
				out = append(out, flagValue{flag, value})
			}
		}
		return out
	}

	seenFirst := map[string]bool{}
	tweakValues := []string{}
	order := []string{}
	firstValue := map[string]string{}

	consume := func(tokens []flagValue) {
		for _, fv := range tokens {
			if fv.flag == "--tweakClass" {
				tweakValues = append(tweakValues, fv.value)
				continue
			}
			if !seenFirst[fv.flag] {
				seenFirst[fv.flag] = true
				firstValue[fv.flag] = fv.value
				order = append(order, fv.flag)
			}
		}
	}

	consume(tokenize(parent))
	consume(tokenize(child))

	var b strings.Builder
	for _, flag := range order {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(flag)
		if v := firstValue[flag]; v != "" {
			b.WriteByte(' ')
			b.WriteString(v)
		}
	}
	for _, v := range tweakValues {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString("--tweakClass")
		if v != "" {
			b.WriteByte(' ')
			b.WriteString(v)
		}
	}
	return b.String()
}

// splitLegacyGameArgs is a literal split(' '), not a whitespace-collapsing
// split: consecutive spaces in a legacy minecraftArguments string produce
// empty elements, matching the source's naive string split.
func splitLegacyGameArgs(s string) []string {
	return strings.Split(s, " ")
}
