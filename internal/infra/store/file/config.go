package file

type Config struct {
	FilePath string
}
