package command

import "strings"

// OutputPath derives the .apks path for bundle: same directory, final
// extension replaced. Both / and \ separate directories.
func OutputPath(bundle string) string {
	dir, name := split(bundle)
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		name = name[:i]
	}
	return dir + name + ".apks"
}

// OutputDir returns the directory the .apks is written to, without a
// trailing separator. A bare file name yields ".".
func OutputDir(bundle string) string {
	dir, _ := split(bundle)
	switch {
	case dir == "":
		return "."
	case len(dir) == 1:
		return dir
	}
	return dir[:len(dir)-1]
}

// UnpackDir returns the directory an unpacked .apks goes to: a folder named
// after the bundle next to it.
func UnpackDir(bundle string) string {
	dir, name := split(OutputPath(bundle))
	return dir + strings.TrimSuffix(name, ".apks")
}

// split returns the directory part including its trailing separator, and
// the file name.
func split(path string) (string, string) {
	i := strings.LastIndexAny(path, `/\`)
	return path[:i+1], path[i+1:]
}
