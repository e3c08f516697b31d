package obj

import "github.com/tliron/commonlog"

var log = commonlog.GetLogger("vtab.obj")
