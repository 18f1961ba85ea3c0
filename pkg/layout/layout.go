// Package layout computes the canonical on-disk paths under a Minecraft
// root directory. It is the contract between the launcher and the
// Minecraft installation: the resolver, the synthesizer, and the
// diagnoser must never invent a path that isn't derived from here.
package layout

import "path/filepath"

// JarKind distinguishes the client jar from role-specific jars such as the
// dedicated server jar.
type JarKind string

const (
	JarClient JarKind = "client"
	JarServer JarKind = "server"
)

// Layout is the bound form: a root plus the path helpers below. The
// unbound, static functions (Versions, VersionRoot, ...) take the root
// explicitly and are what Layout's methods delegate to, mirroring the
// teacher's GameFolder, which exposes both a bound GetPath()/GetDirectory()
// surface and raw filepath.Join call sites.
type Layout struct {
	Root string
}

func New(root string) Layout { return Layout{Root: root} }

func Versions(root string) string { return filepath.Join(root, "versions") }

func VersionRoot(root, version string) string {
	return filepath.Join(Versions(root), version)
}

func VersionJSON(root, version string) string {
	return filepath.Join(VersionRoot(root, version), version+".json")
}

// VersionJar returns the client jar path for kind==JarClient
// ({root}/versions/{v}/{v}.jar) and the role-qualified path otherwise
// ({root}/versions/{v}/{v}-{kind}.jar).
func VersionJar(root, version string, kind JarKind) string {
	if kind == "" || kind == JarClient {
		return filepath.Join(VersionRoot(root, version), version+".jar")
	}
	return filepath.Join(VersionRoot(root, version), version+"-"+string(kind)+".jar")
}

func NativesRoot(root, version string) string {
	return filepath.Join(VersionRoot(root, version), version+"-natives")
}

func Libraries(root string) string { return filepath.Join(root, "libraries") }

func Library(root, relPath string) string {
	return filepath.Join(Libraries(root), relPath)
}

func Assets(root string) string { return filepath.Join(root, "assets") }

func AssetsIndex(root, id string) string {
	return filepath.Join(Assets(root), "indexes", id+".json")
}

func Asset(root, hash string) string {
	prefix := hash
	if len(hash) >= 2 {
		prefix = hash[:2]
	}
	return filepath.Join(Assets(root), "objects", prefix, hash)
}

func LogConfig(root, file string) string {
	return filepath.Join(Assets(root), "log_configs", file)
}

func MapInfo(root, mapName string) string {
	return filepath.Join(root, "saves", mapName, "level.dat")
}

func MapIcon(root, mapName string) string {
	return filepath.Join(root, "saves", mapName, "icon.png")
}

func (l Layout) Versions() string                    { return Versions(l.Root) }
func (l Layout) VersionRoot(version string) string   { return VersionRoot(l.Root, version) }
func (l Layout) VersionJSON(version string) string   { return VersionJSON(l.Root, version) }
func (l Layout) VersionJar(version string, kind JarKind) string {
	return VersionJar(l.Root, version, kind)
}
func (l Layout) NativesRoot(version string) string   { return NativesRoot(l.Root, version) }
func (l Layout) Libraries() string                   { return Libraries(l.Root) }
func (l Layout) Library(relPath string) string       { return Library(l.Root, relPath) }
func (l Layout) Assets() string                      { return Assets(l.Root) }
func (l Layout) AssetsIndex(id string) string         { return AssetsIndex(l.Root, id) }
func (l Layout) Asset(hash string) string             { return Asset(l.Root, hash) }
func (l Layout) LogConfig(file string) string         { return LogConfig(l.Root, file) }
func (l Layout) MapInfo(mapName string) string        { return MapInfo(l.Root, mapName) }
func (l Layout) MapIcon(mapName string) string        { return MapIcon(l.Root, mapName) }
