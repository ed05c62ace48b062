package ast

type (
	// главные сущности
	FileID uint32
	StmtID uint32
	ExprID uint32
	// подсущности
	MemberID uint32
	ParamID  uint32
	PatID    uint32
	TypeID   uint32
)

const (
	NoFileID   FileID   = 0
	NoStmtID   StmtID   = 0
	NoExprID   ExprID   = 0
	NoMemberID MemberID = 0
	NoParamID  ParamID  = 0
	NoPatID    PatID    = 0
	NoTypeID   TypeID   = 0
)

func (id FileID) IsValid() bool   { return id != NoFileID }
func (id StmtID) IsValid() bool   { return id != NoStmtID }
func (id ExprID) IsValid() bool   { return id != NoExprID }
func (id MemberID) IsValid() bool { return id != NoMemberID }
func (id ParamID) IsValid() bool  { return id != NoParamID }
func (id PatID) IsValid() bool    { return id != NoPatID }
func (id TypeID) IsValid() bool   { return id != NoTypeID }

// NodeKind tags which arena a NodeRef points into.
type NodeKind uint8

const (
	NodeNone NodeKind = iota
	NodeExpr
	NodeStmt
	NodeMember
	NodePat
)

// NodeRef is a borrowed, non-owning reference to any AST node.
// The zero value means "no node".
type NodeRef struct {
	Kind NodeKind
	ID   uint32
}

func (r NodeRef) IsValid() bool { return r.Kind != NodeNone && r.ID != 0 }

func ExprRef(id ExprID) NodeRef     { return NodeRef{Kind: NodeExpr, ID: uint32(id)} }
func StmtRef(id StmtID) NodeRef     { return NodeRef{Kind: NodeStmt, ID: uint32(id)} }
func MemberRef(id MemberID) NodeRef { return NodeRef{Kind: NodeMember, ID: uint32(id)} }
func PatRef(id PatID) NodeRef       { return NodeRef{Kind: NodePat, ID: uint32(id)} }
