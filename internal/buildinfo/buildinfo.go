package buildinfo

const Graffiti = " _____  _____ ______   ___   _     \n/  ___||  ___|| ___ \\ / _ \\ | |    \n\\ `--. | |__  | |_/ // /_\\ \\| |    \n `--. \\|  __| |  __/ |  _  || |    \n/\\__/ /| |___ | |    | | | || |____\n\\____/ \\____/ \\_|    \\_| |_/\\_____/\n\n"

var (
	BuildTag string = "v0.0.0"
	Name     string = "SEPAL"
	Time     string = ""
)

type buildinfo struct{}

func (buildinfo) Tag() string {
	return BuildTag
}

func (buildinfo) Name() string {
	return Name
}

func (buildinfo) Time() string {
	return Time
}

var Info buildinfo
