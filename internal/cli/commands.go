package cli

func (a *App) registerCommands() {
	// quotes
	a.register("list", "list [query]", a.cmdList)
	a.register("stats", "stats", a.cmdStats)
	a.register("new", "new", a.cmdNew)
	a.register("open", "open <id>", a.cmdOpen)
	a.register("show", "show", a.cmdShow)
	a.register("set", "set <field> <value>   (fields: "+setFieldNames()+")", a.cmdSet)
	a.register("save", "save", a.cmdSave)
	a.register("status", "status <id> <draft|sent|booked|cancelled>", a.cmdStatus)
	a.register("delete", "delete <id>", a.cmdDelete)

	// itinerary
	a.register("add", "add <flight|hotel|activity|transfer|other> [day]", a.cmdAdd)
	a.register("edit", "edit <item> <title|description|day|city|time|type> <value>", a.cmdEdit)
	a.register("pick", "pick <item> [library index]", a.cmdPick)
	a.register("tag", "tag <item> <inc|exc> <text>", a.cmdTag)
	a.register("untag", "untag <item> <inc|exc> <index>", a.cmdUntag)
	a.register("rm", "rm <item>", a.cmdRemoveItem)
	a.register("moveday", "moveday <day> <up|down>", a.cmdMoveDay)
	a.register("toggle", "toggle <inc|exc|policy> [text]", a.cmdToggle)
	a.register("suggest", "suggest <days> [budget|moderate|luxury] [interests]", a.cmdSuggest)

	// templates and library
	a.register("templates", "templates [query]", a.cmdTemplates)
	a.register("inject", "inject <template index>", a.cmdInject)
	a.register("savetrip", "savetrip [name]", a.cmdSaveTrip)
	a.register("lib", "lib <category> [query]", a.cmdLib)
	a.register("libadd", "libadd <category> <text | title|description|city|inclusions|exclusions>", a.cmdLibAdd)
	a.register("libedit", "libedit <category> <index> <value>", a.cmdLibEdit)
	a.register("librm", "librm <category> <index>", a.cmdLibRemove)

	// output and sync
	a.register("preview", "preview", a.cmdPreview)
	a.register("pdf", "pdf [file | s3://bucket/key]", a.cmdPDF)
	a.register("export", "export <library|templates|backup|sealed> [file | s3://bucket/key]", a.cmdExport)
	a.register("import", "import <library|templates|backup|sealed> <file>", a.cmdImport)
	a.register("sync", "sync [main|templates]", a.cmdSync)
	a.register("seturl", "seturl <main|templates> <url|default>", a.cmdSetURL)
}
