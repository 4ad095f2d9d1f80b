// Package stack provides a lock-free concurrent FILO stack with an
// elimination back-off layer.
//
// The stack is a Treiber stack: a singly linked list whose top pointer
// is the single linearization point for every operation that goes
// through it. Under contention a failed Push and a failed Pop may
// instead meet on one slot of a fixed elimination array and cancel each
// other there, without touching the top pointer at all.
package stack

/*
state of one exchanger slot (item pointer):

名称		item			含义
EMPTY		nil				无offer,可发布
OFFERING	&slotItem{p}	push已发布值,等待pop领取
BUSY		&slotItem{}		pop已领取,等待push清空

slot:一次rendezvous的交换点。
push侧:cas(item,nil,offering),等待变为BUSY,cas(item,BUSY,nil)完成。
		超时cas(item,offering,nil)撤回;撤回失败说明pop已领取,完成。
pop侧:读到OFFERING,先取值,再cas(item,OFFERING,BUSY),成功则完成。

每次OFFERING/BUSY都是新分配的slotItem,cas比较的指针在持有者存活期间
不会被复用,不存在ABA。节点同理:每次Push新分配node,出栈后free不复用。

linearization point:
	非消除操作: top指针cas成功时。
	消除操作:  pop侧cas(OFFERING→BUSY)成功时。
*/
