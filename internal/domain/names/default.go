package names

// defaultVariants is the built-in formal -> diminutive mapping for Russian
// given names, covering the names that actually occur in the player corpus.
// Deployments extend it via the names.variants_file config key.
var defaultVariants = map[string][]string{
	"александр": {"саша", "саня", "шура", "алекс"},
	"алексей":   {"лёша", "леша", "алёша", "алеша"},
	"анатолий":  {"толя", "толик"},
	"андрей":    {"андрюша", "дрон"},
	"антон":     {"тоша"},
	"борис":     {"боря"},
	"вадим":     {"вадик"},
	"валентин":  {"валя"},
	"василий":   {"вася", "васёк", "васек"},
	"виктор":    {"витя"},
	"виталий":   {"виталик"},
	"владимир":  {"вова", "володя", "вован"},
	"владислав": {"влад", "слава"},
	"вячеслав":  {"славик"},
	"геннадий":  {"гена"},
	"георгий":   {"гоша", "жора"},
	"григорий":  {"гриша"},
	"даниил":    {"даня", "данила"},
	"денис":     {"дэн"},
	"дмитрий":   {"дима", "димон", "митя"},
	"евгений":   {"женя", "жека"},
	"егор":      {"егорка"},
	"иван":      {"ваня", "ванёк", "ванек"},
	"игорь":     {"гарик"},
	"илья":      {"илюша"},
	"кирилл":    {"кира"},
	"константин": {"костя", "кост"},
	"леонид":    {"лёня", "леня"},
	"максим":    {"макс"},
	"михаил":    {"миша", "мишаня"},
	"никита":    {"ник"},
	"николай":   {"коля", "колян"},
	"олег":      {"олежа"},
	"павел":     {"паша", "павлик"},
	"пётр":      {"петя"},
	"петр":      {"петруха"},
	"роман":     {"рома", "ромка"},
	"семён":     {"сёма"},
	"семен":     {"сема"},
	"сергей":    {"серёжа", "сережа", "серый", "серж"},
	"станислав": {"стас"},
	"степан":    {"стёпа", "степа"},
	"тимофей":   {"тима"},
	"фёдор":     {"федя"},
	"федор":     {"федот"},
	"юрий":      {"юра", "юрик"},
	"ярослав":   {"ярик"},

	"анастасия": {"настя", "ася"},
	"анна":      {"аня", "анюта"},
	"валерия":   {"лера"},
	"вера":      {"верочка"},
	"виктория":  {"вика"},
	"дарья":     {"даша"},
	"евгения":   {"женька"},
	"екатерина": {"катя", "катюша"},
	"елена":     {"лена", "алёна", "алена"},
	"ирина":     {"ира", "ириша"},
	"ксения":    {"ксюша"},
	"любовь":    {"люба"},
	"людмила":   {"люда", "мила"},
	"маргарита": {"рита"},
	"марина":    {"мариша"},
	"мария":     {"маша", "маруся"},
	"надежда":   {"надя"},
	"наталья":   {"наташа", "ната"},
	"ольга":     {"оля", "олечка"},
	"светлана":  {"света"},
	"софия":     {"соня"},
	"татьяна":   {"таня", "танюша"},
	"юлия":      {"юля"},
}
